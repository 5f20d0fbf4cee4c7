package parsing

import (
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/hyperlane-deploy/deploy-api/models"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ghodss/yaml"
	"github.com/icza/dyno"
)

// logoExtensions maps allowed logo MIME types to the file extension used in the registry
var logoExtensions = map[string]string{
	"image/svg+xml": "svg",
	"image/png":     "png",
}

// MaxLogoBytes is the largest logo accepted
const MaxLogoBytes = 1 << 20

// warpRoutesDir is the registry directory holding per token warp route files
const warpRoutesDir = "deployments/warp_routes"

// TokenSymbol returns the symbol used to file a warp route in the registry. It is the
// first token's symbol in the warp core config, or if that cannot be read, the part of
// the warp route ID before the first "/".
func TokenSymbol(warpConfig []byte, warpRouteID string) string {
	var doc interface{}
	if err := yaml.Unmarshal(warpConfig, &doc); err == nil {
		if symbol, err := dyno.GetString(doc, "tokens", 0, "symbol"); err == nil && len(symbol) > 0 {
			return symbol
		}
	}

	return strings.SplitN(warpRouteID, "/", 2)[0]
}

// LogoPath returns the registry path of a logo with the given MIME type
func LogoPath(symbol, mimeType string) string {
	return fmt.Sprintf("%s/%s/logo.%s", warpRoutesDir, symbol, logoExtensions[mimeType])
}

// ReadLogo reads a logo into memory and checks its content is an allowed image type
func ReadLogo(r io.Reader, symbol string) (*models.LogoFile, error) {
	content, err := ioutil.ReadAll(io.LimitReader(r, MaxLogoBytes+1))
	if err != nil {
		return nil, ParseError{
			What:          "logo",
			Why:           "could not be read",
			InternalError: err,
		}
	}

	if len(content) > MaxLogoBytes {
		return nil, ParseError{
			What: "logo",
			Why:  fmt.Sprintf("file must be at most %d bytes", MaxLogoBytes),
		}
	}

	mimeType := mimetype.Detect(content)

	allowed := ""
	for candidate := range logoExtensions {
		if mimeType.Is(candidate) {
			allowed = candidate
			break
		}
	}

	if len(allowed) == 0 {
		return nil, ParseError{
			What: "logo",
			Why: fmt.Sprintf("file type %s is not allowed, upload an SVG or PNG",
				mimeType.String()),
		}
	}

	return &models.LogoFile{
		Path:     LogoPath(symbol, allowed),
		MIMEType: allowed,
		Content:  content,
	}, nil
}
