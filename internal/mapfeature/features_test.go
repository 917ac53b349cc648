package mapfeature

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadLand_MissingFile(t *testing.T) {
	_, err := LoadLand(filepath.Join(t.TempDir(), "nope.shp"))
	assert.Error(t, err)
}
