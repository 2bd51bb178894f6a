package region

import (
	"errors"
	"testing"
)

func TestParsePlatform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw     string
		want    Platform
		cluster Cluster
	}{
		{raw: "euw1", want: "euw1", cluster: ClusterEurope},
		{raw: " NA1 ", want: "na1", cluster: ClusterAmericas},
		{raw: "kr", want: "kr", cluster: ClusterAsia},
		{raw: "vn2", want: "vn2", cluster: ClusterSEA},
		{raw: "me1", want: "me1", cluster: ClusterEurope},
	}
	for _, tc := range tests {
		got, err := ParsePlatform(tc.raw)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.raw, err)
		}
		if got != tc.want || got.Cluster() != tc.cluster {
			t.Fatalf("parse %q: got=%s/%s want=%s/%s", tc.raw, got, got.Cluster(), tc.want, tc.cluster)
		}
	}
}

func TestParsePlatform_Unknown(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "euw", "europe", "pbe1"} {
		if _, err := ParsePlatform(raw); !errors.Is(err, ErrUnknownPlatform) {
			t.Fatalf("parse %q: expected ErrUnknownPlatform, got %v", raw, err)
		}
	}
}

func TestPlatforms(t *testing.T) {
	t.Parallel()

	all := Platforms()
	if len(all) != 17 {
		t.Fatalf("platform count=%d, want 17", len(all))
	}
	if all[0] != "br1" || all[len(all)-1] != "vn2" {
		t.Fatalf("platforms not sorted: %v", all)
	}
}
