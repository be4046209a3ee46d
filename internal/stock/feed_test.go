package stock

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocNo(t *testing.T) {
	tests := []struct {
		desc string
		want string
	}{
		{"เอกสารเลขที่ R1", "R1"},
		{"ขายทองรูปพรรณ เอกสารเลขที่ INV-2025-004 ลูกค้าหน้าร้าน", "INV-2025-004"},
		{"เอกสารเลขที่R7", "R7"},
		{"no document token here", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DocNo(tt.desc), "desc %q", tt.desc)
	}
}

func TestMovementCost(t *testing.T) {
	m := Movement{Qty: "2", BalanceAvgCost: "750.50"}
	assert.Equal(t, "1501", m.Cost().String())

	// Unparseable qty or cost coerces the row to zero.
	assert.True(t, Movement{Qty: "x", BalanceAvgCost: "10"}.Cost().IsZero())
	assert.True(t, Movement{Qty: "2", BalanceAvgCost: ""}.Cost().IsZero())
}

func TestFlexNumberAcceptsStringsAndNumbers(t *testing.T) {
	var m Movement
	require.NoError(t, json.Unmarshal([]byte(`{"type":"sale","qty":1,"balanceAvgCost":"1200","desc":"เอกสารเลขที่ R1"}`), &m))
	assert.Equal(t, "1200", m.Cost().String())

	require.NoError(t, json.Unmarshal([]byte(`{"qty":null,"balanceAvgCost":5}`), &m))
	assert.True(t, m.Cost().IsZero())
}

func TestHTTPFeed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2025", r.URL.Query().Get("year"))
		assert.Equal(t, "3", r.URL.Query().Get("month"))
		json.NewEncoder(w).Encode([]Movement{
			{Type: "sale", Qty: "1", BalanceAvgCost: "1200", Desc: "เอกสารเลขที่ R1"},
		})
	}))
	defer srv.Close()

	feed := NewHTTPFeed(srv.URL, 5*time.Second)
	movements, err := feed.Movements(context.Background(), 2025, 3)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, "R1", DocNo(movements[0].Desc))
}

func TestHTTPFeedErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	feed := NewHTTPFeed(srv.URL, 5*time.Second)
	_, err := feed.Movements(context.Background(), 2025, 3)
	assert.Error(t, err)
}
