package transport

import (
	"net/url"
	"strings"

	"github.com/remotedeck/remotedeck/internal/application/ports"
	"github.com/remotedeck/remotedeck/internal/domain/entities"
)

var _ ports.IconResolver = AssetURLs{}

// AssetURLs resolves icon assets to BaseURL + escaped file name. BaseURL
// may be a path served by this process or an absolute URL.
type AssetURLs struct {
	BaseURL string
}

// IconURL implements ports.IconResolver.
func (a AssetURLs) IconURL(asset entities.IconAsset) string {
	if asset.File == "" {
		return ""
	}
	base := a.BaseURL
	if base != "" && !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base + url.PathEscape(asset.File)
}
