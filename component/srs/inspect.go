package srs

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/skymkmk/domain-list-to-srs/common/varbin"
	C "github.com/skymkmk/domain-list-to-srs/constant"

	"github.com/klauspost/compress/zlib"
)

var (
	ErrInvalidMagic   = errors.New("invalid SRS magic bytes")
	ErrInvalidVersion = errors.New("unsupported SRS version")
	ErrInvalidLength  = errors.New("invalid SRS element count")
)

// Block describes one typed block of a rule-set section.
type Block struct {
	Type C.RuleType
	// Count is the number of strings for keyword and regex blocks and the
	// number of labels for a domain block.
	Count int
	// Words holds the leaves and label bitmap word counts of a domain block.
	Words [2]int
}

type Summary struct {
	Version  byte
	Sections [][]Block
}

// Inspect walks the container framing of an SRS file written by Write and
// reports the blocks it holds. Matcher contents are skipped, not decoded.
func Inspect(r io.Reader) (*Summary, error) {
	var header [4]byte
	_, err := io.ReadFull(r, header[:])
	if err != nil {
		return nil, err
	}
	if [3]byte(header[:3]) != MagicBytes {
		return nil, ErrInvalidMagic
	}
	if header[3] != Version {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, header[3])
	}

	zr, err := zlib.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	reader := bufio.NewReader(zr)

	count, err := varbin.Read(reader)
	if err != nil {
		return nil, err
	}
	summary := &Summary{Version: header[3]}
	for i := uint64(0); i < count; i++ {
		blocks, err := inspectSection(reader)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		summary.Sections = append(summary.Sections, blocks)
	}
	return summary, nil
}

func inspectSection(r *bufio.Reader) ([]Block, error) {
	if _, err := r.ReadByte(); err != nil { // reserved
		return nil, err
	}
	var blocks []Block
	for {
		tag, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		block := Block{Type: C.RuleType(tag)}
		switch block.Type {
		case C.Domain:
			if _, err = r.ReadByte(); err != nil { // reserved
				return nil, err
			}
			for i := range block.Words {
				n, err := readSkip(r, 8)
				if err != nil {
					return nil, err
				}
				block.Words[i] = n
			}
			block.Count, err = readSkip(r, 1)
		case C.DomainKeyword, C.DomainRegex:
			block.Count, err = readStrings(r)
		case C.DomainFinal:
			if _, err = r.ReadByte(); err != nil {
				return nil, err
			}
			return append(blocks, block), nil
		default:
			return nil, fmt.Errorf("unknown rule type %d", tag)
		}
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
}

func readSkip(r *bufio.Reader, size int) (int, error) {
	n, err := varbin.Read(r)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	_, err = io.CopyN(io.Discard, r, int64(n)*int64(size))
	return int(n), err
}

func readStrings(r *bufio.Reader) (int, error) {
	n, err := varbin.Read(r)
	if err != nil {
		return 0, err
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	for i := uint64(0); i < n; i++ {
		if _, err = readSkip(r, 1); err != nil {
			return 0, err
		}
	}
	return int(n), nil
}
