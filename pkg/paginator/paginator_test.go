package paginator

import (
	"fmt"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate_FifteenItemsPageSizeTen(t *testing.T) {
	items := seq(15)

	first := Paginate(items, 10, "")
	assert.Len(t, first.Items, 10)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 2, first.TotalPages)
	assert.True(t, first.HasNext)
	assert.False(t, first.HasPrevious)

	second := Paginate(items, 10, "2")
	assert.Len(t, second.Items, 5)
	assert.Equal(t, []int{11, 12, 13, 14, 15}, second.Items)
	assert.False(t, second.HasNext)
	assert.True(t, second.HasPrevious)
	assert.Equal(t, 1, second.Previous)
	assert.Zero(t, second.Next)
}

func TestPaginate_WindowSizeFormula(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 25, 100} {
		for _, size := range []int{1, 3, 10} {
			p := New(int64(n), size)
			for k := 1; k <= p.NumPages(); k++ {
				t.Run(fmt.Sprintf("n=%d/size=%d/page=%d", n, size, k), func(t *testing.T) {
					want := min(size, max(0, n-(k-1)*size))
					got := Paginate(seq(n), size, strconv.Itoa(k))
					assert.Len(t, got.Items, want)
				})
			}
		}
	}
}

func TestPaginate_EmptyList(t *testing.T) {
	page := Paginate([]string{}, 10, "1")
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrevious)
}

func TestPage_OutOfRangeClampsToLastPage(t *testing.T) {
	page := Paginate(seq(15), 10, "7")
	assert.Equal(t, 2, page.Number)
	assert.Len(t, page.Items, 5)

	huge := Paginate(seq(15), 10, "99999999999999999999999")
	assert.Equal(t, 2, huge.Number)
}

func TestPage_InvalidNumbersDefaultToFirst(t *testing.T) {
	for _, raw := range []string{"", "abc", "0", "-3", "1.5", " "} {
		t.Run(strconv.Quote(raw), func(t *testing.T) {
			page := Paginate(seq(15), 10, raw)
			assert.Equal(t, 1, page.Number)
			assert.Equal(t, 1, page.Items[0])
		})
	}
}

func TestPaginator_WindowOffsets(t *testing.T) {
	p := New(25, 10)
	require.Equal(t, 3, p.NumPages())

	want := []Window{
		{Number: 1, Size: 10, Total: 25, TotalPages: 3, HasNext: true, Next: 2, Offset: 0, Limit: 10},
		{Number: 2, Size: 10, Total: 25, TotalPages: 3, HasNext: true, HasPrevious: true, Next: 3, Previous: 1, Offset: 10, Limit: 10},
		{Number: 3, Size: 10, Total: 25, TotalPages: 3, HasPrevious: true, Previous: 2, Offset: 20, Limit: 5},
	}
	for i, w := range want {
		if diff := cmp.Diff(w, p.PageNumber(i+1)); diff != "" {
			t.Errorf("page %d mismatch (-want +got):\n%s", i+1, diff)
		}
	}
}

func TestNew_PanicsOnBadSize(t *testing.T) {
	assert.Panics(t, func() { New(10, 0) })
}

func TestWithItems_NilBecomesEmpty(t *testing.T) {
	page := WithItems[int](New(0, 10).Page(""), nil)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}
