package news

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func decodeItems(t *testing.T, payload string) []RawNewsItem {
	t.Helper()
	var raw []RawNewsItem
	require.NoError(t, json.Unmarshal([]byte(payload), &raw))
	return raw
}

func TestNormalizeOrdersByVotes(t *testing.T) {
	raw := decodeItems(t, `[
		{"title":"five","votes":{"positive":5}},
		{"title":"twenty","votes":{"positive":20}},
		{"title":"one","votes":{"positive":1}}
	]`)

	items := Normalize(raw)
	require.Len(t, items, 3)
	require.Equal(t, []int{20, 5, 1}, []int{items[0].Votes, items[1].Votes, items[2].Votes})
	require.Equal(t, []string{"twenty", "five", "one"}, Titles(items))
}

func TestNormalizeDefaults(t *testing.T) {
	raw := decodeItems(t, `[
		{"title":"no votes","url":"https://example.com/a","published_at":"2024-01-01T00:00:00Z"},
		{"title":"no positive","votes":{"negative":3}},
		{"title":"with source","source":{"title":"CoinDesk","domain":"coindesk.com"},"votes":{"positive":2}},
		{}
	]`)

	items := Normalize(raw)
	require.Len(t, items, 4)

	require.Equal(t, "with source", *items[0].Title)
	require.Equal(t, "CoinDesk", *items[0].Source)
	for _, item := range items[1:] {
		require.Zero(t, item.Votes)
		require.Nil(t, item.Source)
	}
	require.Equal(t, "no votes", *items[1].Title)
	require.Equal(t, "https://example.com/a", *items[1].URL)
	require.Equal(t, "2024-01-01T00:00:00Z", *items[1].PublishedAt)
	require.Nil(t, items[3].Title)
	require.Nil(t, items[3].URL)
	require.Nil(t, items[3].PublishedAt)
}

func TestNormalizeEmpty(t *testing.T) {
	require.NotNil(t, Normalize(nil))
	require.Empty(t, Normalize(nil))
	require.Empty(t, Normalize([]RawNewsItem{}))
}

func TestNormalizeSortedProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 50; round++ {
		n := rng.Intn(30)
		raw := make([]RawNewsItem, n)
		for i := range raw {
			if rng.Intn(4) == 0 {
				continue
			}
			v := rng.Intn(10)
			raw[i].Votes = &RawVotes{Positive: &v}
		}

		items := Normalize(raw)
		require.Len(t, items, n)
		for i := 1; i < len(items); i++ {
			require.GreaterOrEqual(t, items[i-1].Votes, items[i].Votes)
		}
		require.Equal(t, items, Normalize(raw))
	}
}

func TestTop(t *testing.T) {
	items := Normalize(decodeItems(t, `[{"title":"a"},{"title":"b"},{"title":"c"}]`))
	require.Len(t, Top(items, 2), 2)
	require.Len(t, Top(items, 10), 3)
	require.Len(t, Top(items, 0), 3)
	require.Equal(t, []string{"a", "b"}, Titles(Top(items, 2)))
}
