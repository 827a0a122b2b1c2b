package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iurnickita/iptvshop/internal/catalog/config"
	"github.com/iurnickita/iptvshop/internal/model"
)

func TestLookup(t *testing.T) {
	c := New(map[string]string{"P1": "10", "Gold Plan": "20"}, "")

	pkg, ok := c.Lookup("P1")
	require.True(t, ok)
	assert.Equal(t, "10", pkg)

	pkg, ok = c.Lookup(model.NotAvailable, "Gold Plan")
	require.True(t, ok)
	assert.Equal(t, "20", pkg)

	_, ok = c.Lookup("unknown", "")
	assert.False(t, ok)
}

func TestPackageFor(t *testing.T) {
	c := New(map[string]string{"Trial of Service": "123", "P1": "10"}, "777")

	pkg, ok := c.PackageFor(model.FlowOrder, model.Order{ProductID: "P1", ProductTitle: "Trial of Service"})
	require.True(t, ok)
	assert.Equal(t, "10", pkg, "product id is looked up before title")

	pkg, ok = c.PackageFor(model.FlowOrder, model.Order{ProductID: "P9", ProductTitle: "Trial of Service"})
	require.True(t, ok)
	assert.Equal(t, "123", pkg)

	_, ok = c.PackageFor(model.FlowOrder, model.Order{ProductID: "P9", ProductTitle: "Other"})
	assert.False(t, ok)

	pkg, ok = c.PackageFor(model.FlowTrial, model.Order{ProductID: model.NotAvailable, ProductTitle: "IPTV Trial"})
	require.True(t, ok)
	assert.Equal(t, "777", pkg)
}

func TestNewCopiesInput(t *testing.T) {
	src := map[string]string{"P1": "10"}
	c := New(src, "")
	src["P1"] = "99"

	pkg, _ := c.Lookup("P1")
	assert.Equal(t, "10", pkg)
}

func TestLoad(t *testing.T) {
	c, err := Load(config.Config{})
	require.NoError(t, err)
	pkg, ok := c.Lookup("66e46483eebcc")
	require.True(t, ok)
	assert.Equal(t, "10", pkg)

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := "catalog:\n  trial_package: \"5\"\n  packages:\n    \"Basic\": \"1\"\n    \"Premium\": \"2\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	c, err = Load(config.Config{File: path})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	pkg, ok = c.PackageFor(model.FlowTrial, model.Order{})
	require.True(t, ok)
	assert.Equal(t, "5", pkg)

	_, err = Load(config.Config{File: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("catalog: [\n"))
	require.Error(t, err)

	_, err = Parse([]byte("other: 1\n"))
	require.Error(t, err)
}
