package trie_test

import (
	"bytes"
	"math/bits"
	"math/rand"
	"strings"
	"testing"

	"github.com/skymkmk/domain-list-to-srs/component/trie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainSet(t *testing.T) {
	set := trie.NewDomainSet(
		[]string{"baidu.com", "Mijia Cloud", "test.a.net"},
		[]string{"google.com", ".qq.com", "cn"},
	)
	require.NotNil(t, set)
	assert.True(t, set.Match("baidu.com"))
	assert.False(t, set.Match("www.baidu.com"))
	assert.True(t, set.Match("Mijia Cloud"))
	assert.True(t, set.Match("test.a.net"))
	assert.False(t, set.Match("a.net"))
	assert.True(t, set.Match("google.com"))
	assert.True(t, set.Match("www.google.com"))
	assert.False(t, set.Match("agoogle.com"))
	assert.True(t, set.Match("www.qq.com"))
	assert.False(t, set.Match("qq.com"))
	assert.True(t, set.Match("cn"))
	assert.True(t, set.Match("test.cn"))
	assert.False(t, set.Match("com"))
	assert.False(t, set.Match(""))
}

func TestDomainSetSuffixSemantics(t *testing.T) {
	strict := trie.NewDomainSet(nil, []string{".example.com"})
	assert.True(t, strict.Match("foo.example.com"))
	assert.True(t, strict.Match("a.b.example.com"))
	assert.False(t, strict.Match("example.com"))
	assert.False(t, strict.Match("fooexample.com"))

	loose := trie.NewDomainSet(nil, []string{"example.com"})
	assert.True(t, loose.Match("example.com"))
	assert.True(t, loose.Match("foo.example.com"))
	assert.False(t, loose.Match("fooexample.com"))
	assert.False(t, loose.Match("example.org"))
}

func TestDomainSetEmpty(t *testing.T) {
	set := trie.NewDomainSet(nil, []string{})
	assert.Nil(t, set)
	assert.False(t, set.Match("example.com"))
	assert.ErrorIs(t, set.WriteSRS(&bytes.Buffer{}), trie.ErrEmptyDomainSet)
}

func TestDomainSetLayout(t *testing.T) {
	set := trie.NewDomainSet(nil, []string{"a.com", ".b.com"})
	require.NotNil(t, set)

	// root m o c . a b \n . \r
	assert.Equal(t, 10, set.NodeCount())
	assert.Equal(t, 9, set.EdgeCount())
	assert.Equal(t, []uint64{1<<7 | 1<<9}, set.Leaves())
	assert.Equal(t, []uint64{0x6D4AA}, set.LabelBitmap())
	assert.Equal(t, []byte("moc.ab\n.\r"), set.Labels())

	ones := 0
	for _, w := range set.LabelBitmap() {
		ones += bits.OnesCount64(w)
	}
	assert.Equal(t, set.NodeCount(), ones)

	buf := &bytes.Buffer{}
	require.NoError(t, set.WriteSRS(buf))
	expected := []byte{0x00}
	expected = append(expected, 0x01, 0, 0, 0, 0, 0, 0, 0x02, 0x80)
	expected = append(expected, 0x01, 0, 0, 0, 0, 0, 0x06, 0xD4, 0xAA)
	expected = append(expected, 0x09)
	expected = append(expected, "moc.ab\n.\r"...)
	assert.Equal(t, expected, buf.Bytes())
}

func TestDomainSetDeterministic(t *testing.T) {
	domains := []string{"www.google.com", "google.com", "a.example.org"}
	suffixes := []string{"example.org", ".cn", "github.io"}

	a, b := &bytes.Buffer{}, &bytes.Buffer{}
	require.NoError(t, trie.NewDomainSet(domains, suffixes).WriteSRS(a))

	// input order must not matter
	domains[0], domains[2] = domains[2], domains[0]
	suffixes[0], suffixes[1] = suffixes[1], suffixes[0]
	require.NoError(t, trie.NewDomainSet(domains, suffixes).WriteSRS(b))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestDomainSetDuplicates(t *testing.T) {
	set := trie.NewDomainSet([]string{"a.com", "a.com"}, []string{"a.com", "a.com"})
	require.NotNil(t, set)
	assert.True(t, set.Match("a.com"))
	assert.True(t, set.Match("b.a.com"))
}

func TestDomainSetForeach(t *testing.T) {
	domains := []string{"a.com", "例子.中国"}
	suffixes := []string{".b.com", "c.net"}
	set := trie.NewDomainSet(domains, suffixes)

	var gotDomains, gotSuffixes []string
	set.Foreach(func(domain string, suffix bool) bool {
		if suffix {
			gotSuffixes = append(gotSuffixes, domain)
		} else {
			gotDomains = append(gotDomains, domain)
		}
		return true
	})
	assert.ElementsMatch(t, domains, gotDomains)
	assert.ElementsMatch(t, suffixes, gotSuffixes)
	assert.True(t, set.Match("例子.中国"))
}

// naiveMatch is the closure of exact and suffix matching.
func naiveMatch(domains, suffixes []string, name string) bool {
	for _, d := range domains {
		if d == name {
			return true
		}
	}
	for _, s := range suffixes {
		if strings.HasPrefix(s, ".") {
			if strings.HasSuffix(name, s) && len(name) > len(s) {
				return true
			}
		} else if name == s || strings.HasSuffix(name, "."+s) {
			return true
		}
	}
	return false
}

func randomName(r *rand.Rand, maxLen int) string {
	const alphabet = "ab."
	b := make([]byte, r.Intn(maxLen+1))
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return string(b)
}

func TestDomainSetMatchesReference(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for round := 0; round < 200; round++ {
		var domains, suffixes []string
		for i := r.Intn(6); i >= 0; i-- {
			domains = append(domains, randomName(r, 4))
		}
		for i := r.Intn(6); i > 0; i-- {
			suffixes = append(suffixes, randomName(r, 4))
		}
		set := trie.NewDomainSet(domains, suffixes)
		require.NotNil(t, set)

		for _, d := range domains {
			assert.True(t, set.Match(d), "domain %q", d)
		}
		for i := 0; i < 50; i++ {
			name := randomName(r, 6)
			assert.Equal(t, naiveMatch(domains, suffixes, name), set.Match(name),
				"name %q domains %q suffixes %q", name, domains, suffixes)
		}
	}
}
