package state

import (
	"bytes"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/utils/binary"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// blobSide is one side of a content diff: a file from HEAD, the index or the
// worktree.
type blobSide struct {
	path    string
	mode    filemode.FileMode
	hash    plumbing.Hash
	content []byte
}

func newBlobSide(path string, mode filemode.FileMode, hash plumbing.Hash, content []byte) *blobSide {
	if hash.IsZero() {
		hash = plumbing.ComputeHash(plumbing.BlobObject, content)
	}
	return &blobSide{path: path, mode: mode, hash: hash, content: content}
}

func (b *blobSide) Hash() plumbing.Hash     { return b.hash }
func (b *blobSide) Mode() filemode.FileMode { return b.mode }
func (b *blobSide) Path() string            { return b.path }

func (b *blobSide) isBinary() bool {
	if b == nil {
		return false
	}
	bin, err := binary.IsBinary(bytes.NewReader(b.content))
	return err == nil && bin
}

func (b *blobSide) text() string {
	if b == nil {
		return ""
	}
	return string(b.content)
}

// contentPatch is a single-file patch computed from two blob sides so it can
// go through the same unified encoder as tree patches.
type contentPatch struct {
	from, to *blobSide
	binary   bool
	chunks   []fdiff.Chunk
}

func newContentPatch(from, to *blobSide) *contentPatch {
	p := &contentPatch{from: from, to: to}
	if from.isBinary() || to.isBinary() {
		p.binary = true
		return p
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(from.text(), to.text())
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	for _, d := range diffs {
		op := fdiff.Equal
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			op = fdiff.Add
		case diffmatchpatch.DiffDelete:
			op = fdiff.Delete
		}
		p.chunks = append(p.chunks, textChunk{content: d.Text, op: op})
	}
	return p
}

func (p *contentPatch) FilePatches() []fdiff.FilePatch { return []fdiff.FilePatch{p} }
func (p *contentPatch) Message() string                { return "" }
func (p *contentPatch) IsBinary() bool                 { return p.binary }
func (p *contentPatch) Chunks() []fdiff.Chunk          { return p.chunks }

// Files returns untyped nils for missing sides; the encoder checks for nil
// to emit /dev/null.
func (p *contentPatch) Files() (fdiff.File, fdiff.File) {
	var from, to fdiff.File
	if p.from != nil {
		from = p.from
	}
	if p.to != nil {
		to = p.to
	}
	return from, to
}

type textChunk struct {
	content string
	op      fdiff.Operation
}

func (c textChunk) Content() string       { return c.content }
func (c textChunk) Type() fdiff.Operation { return c.op }
