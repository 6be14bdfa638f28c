package output

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/pretty"

	"github.com/supermodeltools/pwakit/internal/pwa/manifest"
)

var prettyOptions = &pretty.Options{
	Width:    80,
	Prefix:   "",
	Indent:   "  ",
	SortKeys: true,
}

// GenerateManifest serializes doc as a manifest.webmanifest document. Equal
// documents always produce identical bytes.
func GenerateManifest(doc *manifest.Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return pretty.PrettyOptions(data, prettyOptions), nil
}
