package trie

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/skymkmk/domain-list-to-srs/common/varbin"
)

var ErrEmptyDomainSet = errors.New("empty domain set")

// WriteSRS writes the succinct set in the layout of an SRS domain block.
func (ss *DomainSet) WriteSRS(w io.Writer) (err error) {
	if ss == nil {
		return ErrEmptyDomainSet
	}

	// reserved
	_, err = w.Write([]byte{0})
	if err != nil {
		return err
	}

	// leaves
	err = writeWords(w, ss.leaves)
	if err != nil {
		return err
	}

	// labelBitmap
	err = writeWords(w, ss.labelBitmap)
	if err != nil {
		return err
	}

	// labels
	err = varbin.Write(w, uint64(len(ss.labels)))
	if err != nil {
		return err
	}
	_, err = w.Write(ss.labels)
	return err
}

func writeWords(w io.Writer, words []uint64) error {
	buf := make([]byte, 0, varbin.MaxLen+8*len(words))
	buf = varbin.Append(buf, uint64(len(words)))
	for _, d := range words {
		buf = binary.BigEndian.AppendUint64(buf, d)
	}
	_, err := w.Write(buf)
	return err
}
