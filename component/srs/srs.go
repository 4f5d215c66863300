package srs

import (
	"bytes"
	"io"

	"github.com/skymkmk/domain-list-to-srs/common/varbin"
	"github.com/skymkmk/domain-list-to-srs/component/trie"
	C "github.com/skymkmk/domain-list-to-srs/constant"

	"github.com/klauspost/compress/zlib"
)

var MagicBytes = [3]byte{'S', 'R', 'S'}

const Version = 3

// Write encodes rule as a single-section SRS rule-set. Nothing is written
// to w beyond the rule-set itself; an error leaves w holding a truncated
// file that the caller must discard.
func Write(w io.Writer, rule *C.Rule) (err error) {
	// header
	_, err = w.Write(MagicBytes[:])
	if err != nil {
		return err
	}

	// version
	_, err = w.Write([]byte{Version})
	if err != nil {
		return err
	}

	encoder, err := zlib.NewWriterLevel(w, zlib.BestCompression)
	if err != nil {
		return err
	}
	defer func() {
		zlibErr := encoder.Close()
		if err == nil {
			err = zlibErr
		}
	}()

	// section count
	err = varbin.Write(encoder, 1)
	if err != nil {
		return err
	}

	section, err := encodeSection(rule)
	if err != nil {
		return err
	}
	_, err = encoder.Write(section)
	return err
}

func encodeSection(rule *C.Rule) ([]byte, error) {
	buf := &bytes.Buffer{}

	// reserved
	buf.WriteByte(0)

	if rule.HasDomainMatcher() {
		buf.WriteByte(C.Domain.Byte())
		ds := trie.NewDomainSet(rule.Domain.Sorted(), rule.DomainSuffix.Sorted())
		if err := ds.WriteSRS(buf); err != nil {
			return nil, err
		}
	}

	writeStrings(buf, C.DomainKeyword, rule.DomainKeyword)
	writeStrings(buf, C.DomainRegex, rule.DomainRegex)

	buf.WriteByte(C.DomainFinal.Byte())
	buf.WriteByte(0)
	return buf.Bytes(), nil
}

func writeStrings(buf *bytes.Buffer, ruleType C.RuleType, set C.StringSet) {
	if set.Len() == 0 {
		return
	}
	buf.WriteByte(ruleType.Byte())
	var scratch [varbin.MaxLen]byte
	buf.Write(varbin.Append(scratch[:0], uint64(set.Len())))
	for _, s := range set.Sorted() {
		buf.Write(varbin.Append(scratch[:0], uint64(len(s))))
		buf.WriteString(s)
	}
}
