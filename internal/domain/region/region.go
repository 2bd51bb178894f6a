package region

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownPlatform = errors.New("unknown platform")

// Platform is a game server id such as "euw1". Platform-scoped resources live on its host.
type Platform string

// Cluster is the regional routing value that serves account and match resources.
type Cluster string

const (
	ClusterAmericas Cluster = "americas"
	ClusterAsia     Cluster = "asia"
	ClusterEurope   Cluster = "europe"
	ClusterSEA      Cluster = "sea"
)

var clusters = map[Platform]Cluster{
	"na1":  ClusterAmericas,
	"br1":  ClusterAmericas,
	"la1":  ClusterAmericas,
	"la2":  ClusterAmericas,
	"kr":   ClusterAsia,
	"jp1":  ClusterAsia,
	"euw1": ClusterEurope,
	"eun1": ClusterEurope,
	"tr1":  ClusterEurope,
	"ru":   ClusterEurope,
	"me1":  ClusterEurope,
	"oc1":  ClusterSEA,
	"ph2":  ClusterSEA,
	"sg2":  ClusterSEA,
	"th2":  ClusterSEA,
	"tw2":  ClusterSEA,
	"vn2":  ClusterSEA,
}

// ParsePlatform accepts any casing and surrounding space.
func ParsePlatform(raw string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := clusters[p]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, raw)
	}
	return p, nil
}

func (p Platform) Cluster() Cluster {
	return clusters[p]
}

func (p Platform) String() string {
	return string(p)
}

// Platforms returns every known platform in lexical order.
func Platforms() []Platform {
	out := make([]Platform, 0, len(clusters))
	for p := range clusters {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
