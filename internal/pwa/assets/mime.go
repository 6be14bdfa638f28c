package assets

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/supermodeltools/pwakit/internal/pwa/manifest"
)

// ErrIconTypeMismatch marks an icon whose content does not match its type.
var ErrIconTypeMismatch = errors.New("icon type mismatch")

// IconTypeMismatchError reports an icon whose declared type differs from
// the type sniffed from its content.
type IconTypeMismatchError struct {
	Src      string
	Declared string
	Detected string
}

func (e *IconTypeMismatchError) Error() string {
	return fmt.Sprintf("%s: %s declared %s, content is %s", ErrIconTypeMismatch, e.Src, e.Declared, e.Detected)
}

func (e *IconTypeMismatchError) Unwrap() error { return ErrIconTypeMismatch }

const sniffLimit = 3072

// maxSniffers bounds concurrent file reads.
const maxSniffers = 8

// CheckIconTypes sniffs each distinct icon file of doc and returns one
// mismatch per icon whose declared type disagrees with its content. Icons
// without a declared type are skipped. Read failures are returned as err.
func CheckIconTypes(ctx context.Context, fsys afero.Fs, root string, doc *manifest.Document) ([]*IconTypeMismatchError, error) {
	icons := doc.Icons()
	detected := make([]*mimetype.MIME, len(icons))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxSniffers)
	for i, icon := range icons {
		if icon.Type == "" {
			continue
		}
		i, icon := i, icon
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mt, err := sniff(fsys, FilePath(root, icon.Src))
			if err != nil {
				return fmt.Errorf("sniffing %s: %w", icon.Src, err)
			}
			detected[i] = mt
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var mismatches []*IconTypeMismatchError
	for i, icon := range icons {
		if icon.Type == "" || detected[i].Is(icon.Type) {
			continue
		}
		mismatches = append(mismatches, &IconTypeMismatchError{
			Src:      icon.Src,
			Declared: icon.Type,
			Detected: detected[i].String(),
		})
	}
	return mismatches, nil
}

func sniff(fsys afero.Fs, path string) (*mimetype.MIME, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	head := make([]byte, sniffLimit)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return mimetype.Detect(head[:n]), nil
}
