package riot

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	crerr "github.com/cockroachdb/errors"

	"github.com/Dawichi/hexastats/internal/domain/catalog"
	"github.com/Dawichi/hexastats/internal/platform/logging"
	"github.com/Dawichi/hexastats/internal/usecase"
	"github.com/Dawichi/hexastats/internal/validation"
)

type championCatalog struct {
	Data map[string]struct {
		ID   string `json:"id"`
		Key  string `json:"key"`
		Name string `json:"name"`
	} `json:"data"`
}

// DataDragon reads the content version and champion catalog from the static CDN.
type DataDragon struct {
	transport Transport
	baseURL   string
	locale    string
	logger    *logging.Logger
}

var _ usecase.ContentSource = (*DataDragon)(nil)

func NewDataDragon(transport Transport, baseURL string, logger *logging.Logger) *DataDragon {
	if logger == nil {
		logger = logging.Default()
	}
	if transport == nil {
		transport = NewHTTPTransport(nil, TransportConfig{Logger: logger})
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = catalog.DDragonBaseURL
	}
	return &DataDragon{transport: transport, baseURL: baseURL, locale: "en_US", logger: logger}
}

// LatestVersion returns the first entry of versions.json, which is the newest.
func (d *DataDragon) LatestVersion(ctx context.Context) (string, error) {
	body, err := d.get(ctx, d.baseURL+"/api/versions.json")
	if err != nil {
		return "", err
	}
	versions, err := validation.Decode[[]string](validation.KindVersions, body)
	if err != nil {
		return "", crerr.Wrap(err, "data dragon versions")
	}
	if len(versions) == 0 || strings.TrimSpace(versions[0]) == "" {
		return "", crerr.New("data dragon versions: empty list")
	}
	return versions[0], nil
}

// Champions maps numeric champion keys to the champion id used in asset file names.
func (d *DataDragon) Champions(ctx context.Context, version string) (map[int]string, error) {
	rawURL := d.baseURL + "/cdn/" + url.PathEscape(version) + "/data/" + d.locale + "/champion.json"
	body, err := d.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	parsed, err := validation.Decode[championCatalog](validation.KindChampionCatalog, body)
	if err != nil {
		return nil, crerr.Wrap(err, "data dragon champions")
	}

	out := make(map[int]string, len(parsed.Data))
	for name, champ := range parsed.Data {
		key, err := strconv.Atoi(strings.TrimSpace(champ.Key))
		if err != nil {
			return nil, crerr.Wrapf(err, "data dragon champion %s has key %q", name, champ.Key)
		}
		out[key] = champ.ID
	}
	return out, nil
}

func (d *DataDragon) get(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := d.transport.Get(ctx, rawURL, nil)
	if err != nil {
		return nil, transportFailure(rawURL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		upErr := classify(resp.StatusCode, resp.RetryAfter, rawURL, resp.Body)
		d.logger.WarnContext(ctx, "data dragon request failed", "url", rawURL, "status", resp.StatusCode)
		return nil, upErr
	}
	return resp.Body, nil
}
