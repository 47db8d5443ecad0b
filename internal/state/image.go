package state

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// imageFormats maps known image extensions to their display format.
var imageFormats = map[string]string{
	".png":  "PNG",
	".jpg":  "JPEG",
	".jpeg": "JPEG",
	".gif":  "GIF",
	".webp": "WebP",
	".bmp":  "BMP",
	".svg":  "SVG",
	".ico":  "ICO",
}

// IsImagePath reports whether path has an image file extension.
func IsImagePath(path string) bool {
	_, ok := imageFormats[strings.ToLower(filepath.Ext(path))]
	return ok
}

// ImageData is one version of an image, ready to be shown inline.
type ImageData struct {
	Data     string `json:"data"` // base64, standard encoding
	MimeType string `json:"mimeType"`
	Size     int64  `json:"size"`
	// Width and Height are 0 when the format cannot be decoded.
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Format string `json:"format"`
}

// ImagePair holds both sides of an image change. Old is nil for an added
// file and New is nil for a deleted one.
type ImagePair struct {
	Path    string     `json:"path"`
	IsImage bool       `json:"isImage"`
	Old     *ImageData `json:"old,omitempty"`
	New     *ImageData `json:"new,omitempty"`
}

// newImageData sniffs content and reads its dimensions when a decoder is
// registered for the format.
func newImageData(path string, content []byte) *ImageData {
	img := &ImageData{
		Data:     base64.StdEncoding.EncodeToString(content),
		MimeType: http.DetectContentType(content),
		Size:     int64(len(content)),
		Format:   imageFormats[strings.ToLower(filepath.Ext(path))],
	}
	if cfg, format, err := image.DecodeConfig(bytes.NewReader(content)); err == nil {
		img.Width, img.Height = cfg.Width, cfg.Height
		img.Format = displayFormat(format)
		img.MimeType = "image/" + format
	} else if isSVG(content) {
		img.Format = "SVG"
		img.MimeType = "image/svg+xml"
	}
	return img
}

func displayFormat(decoder string) string {
	switch decoder {
	case "webp":
		return "WebP"
	default:
		return strings.ToUpper(decoder)
	}
}

func isSVG(content []byte) bool {
	head := content
	if len(head) > 512 {
		head = head[:512]
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}

// ImageDiff returns both versions of an image. With a commitID the sides are
// the first parent and the commit; otherwise HEAD and index when staged, or
// index and worktree. A path on neither side is ErrFileNotFound.
func ImageDiff(repo *gogit.Repository, path, commitID string, staged bool) (ImagePair, error) {
	out := ImagePair{Path: path}

	var from, to *blobSide
	var err error
	switch {
	case commitID != "":
		from, to, err = commitSides(repo, path, commitID)
	case staged:
		if from, err = headSide(repo, path); err == nil {
			to, err = indexSide(repo, path)
		}
	default:
		var wt *gogit.Worktree
		if wt, err = repo.Worktree(); err != nil {
			return out, fmt.Errorf("worktree: %w", err)
		}
		if from, err = indexSide(repo, path); err == nil {
			to, err = worktreeSide(wt, path, from)
		}
	}
	if err != nil {
		return out, err
	}
	if from == nil && to == nil {
		return out, fmt.Errorf("%s: %w", path, ErrFileNotFound)
	}

	if from != nil {
		out.Old = newImageData(path, from.content)
	}
	if to != nil {
		out.New = newImageData(path, to.content)
	}
	out.IsImage = IsImagePath(path) || sniffedImage(out.Old) || sniffedImage(out.New)
	return out, nil
}

// ImageAt returns the image at commitID, or in the worktree when commitID is
// empty.
func ImageAt(repo *gogit.Repository, path, commitID string) (*ImageData, error) {
	if commitID == "" {
		wt, err := repo.Worktree()
		if err != nil {
			return nil, fmt.Errorf("worktree: %w", err)
		}
		side, err := worktreeSide(wt, path, nil)
		if err != nil {
			return nil, err
		}
		if side == nil {
			return nil, fmt.Errorf("%s: %w", path, ErrFileNotFound)
		}
		return newImageData(path, side.content), nil
	}

	c, err := resolveCommit(repo, commitID)
	if err != nil {
		return nil, err
	}
	side, err := treeSide(c, path)
	if err != nil {
		return nil, err
	}
	if side == nil {
		return nil, fmt.Errorf("%s at %s: %w", path, c.Hash, ErrFileNotFound)
	}
	return newImageData(path, side.content), nil
}

func sniffedImage(img *ImageData) bool {
	return img != nil && strings.HasPrefix(img.MimeType, "image/")
}

// commitSides reads path from the commit's first parent and from the commit.
func commitSides(repo *gogit.Repository, path, commitID string) (*blobSide, *blobSide, error) {
	c, err := resolveCommit(repo, commitID)
	if err != nil {
		return nil, nil, err
	}
	to, err := treeSide(c, path)
	if err != nil {
		return nil, nil, err
	}
	if c.NumParents() == 0 {
		return nil, to, nil
	}
	parent, err := c.Parent(0)
	if err != nil {
		return nil, nil, fmt.Errorf("parent of %s: %w", c.Hash, err)
	}
	from, err := treeSide(parent, path)
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

// treeSide reads path from a commit's tree, or returns nil when it is absent.
func treeSide(c *object.Commit, path string) (*blobSide, error) {
	f, err := c.File(path)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s at %s: %w", path, c.Hash, err)
	}
	content, err := f.Contents()
	if err != nil {
		return nil, fmt.Errorf("%s at %s: %w", path, c.Hash, err)
	}
	return newBlobSide(path, f.Mode, f.Hash, []byte(content)), nil
}
