package dictionary

import (
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/wordlook/internal/utils"
)

// posting lists the records owning one suffix, ascending and without duplicates
type posting struct {
	ids []int
}

// Index answers substring queries over normalized record fields.
//
// Every suffix of every normalized field is a key in a patricia trie, so a
// query q matches a field exactly when q is a prefix of one of its suffixes.
// Looking q up is one subtree walk instead of a scan over every record.
type Index struct {
	trie     *patricia.Trie
	size     int
	nonEmpty []bool // records that have at least one field
}

// NewIndex builds the suffix trie for records
func NewIndex(records []Record) *Index {
	idx := &Index{
		trie:     patricia.NewTrie(),
		size:     len(records),
		nonEmpty: make([]bool, len(records)),
	}

	suffixes := 0
	for i, record := range records {
		idx.nonEmpty[i] = len(record) > 0
		for _, field := range record {
			suffixes += idx.insertSuffixes(utils.Normalize(field), i)
		}
	}

	log.Debugf("Index built: records=%d suffixes=%d", len(records), suffixes)
	return idx
}

// insertSuffixes adds every rune-aligned suffix of s for record id
func (idx *Index) insertSuffixes(s string, id int) int {
	count := 0
	for offset := 0; offset < len(s); {
		key := patricia.Prefix(s[offset:])
		if item := idx.trie.Get(key); item != nil {
			p := item.(*posting)
			if p.ids[len(p.ids)-1] != id {
				p.ids = append(p.ids, id)
			}
		} else {
			idx.trie.Insert(key, &posting{ids: []int{id}})
		}
		count++

		_, width := utf8.DecodeRuneInString(s[offset:])
		offset += width
	}
	return count
}

// Search returns up to limit record ids, ascending, whose fields contain the
// already normalized query. An empty query matches every record with at least
// one field.
func (idx *Index) Search(normalized string, limit int) []int {
	if limit <= 0 || idx.size == 0 {
		return []int{}
	}

	matched := make([]bool, idx.size)
	if normalized == "" {
		copy(matched, idx.nonEmpty)
	} else {
		err := idx.trie.VisitSubtree(patricia.Prefix(normalized), func(_ patricia.Prefix, item patricia.Item) error {
			for _, id := range item.(*posting).ids {
				matched[id] = true
			}
			return nil
		})
		if err != nil {
			log.Errorf("Error visiting index subtree: %v", err)
			return []int{}
		}
	}

	result := make([]int, 0, min(limit, idx.size))
	for id, ok := range matched {
		if !ok {
			continue
		}
		result = append(result, id)
		if len(result) == limit {
			break
		}
	}
	return result
}
