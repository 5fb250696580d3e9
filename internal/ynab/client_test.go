package ynab

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beanpull-dev/beanpull/internal/model"
)

const budgetsBody = `{"data":{"budgets":[
  {"id":"b-1","name":"Personal","currency_format":{"iso_code":"USD"}},
  {"id":"b-2","name":"Business","currency_format":{"iso_code":"EUR"}}
]}}`

const accountsBody = `{"data":{"accounts":[
  {"id":"a-1","name":"Checking","type":"checking","on_budget":true,"closed":false,"deleted":false},
  {"id":"a-2","name":"Old Card","type":"creditCard","on_budget":true,"closed":true,"deleted":false},
  {"id":"a-3","name":"Gone","type":"checking","on_budget":true,"closed":false,"deleted":true}
]}}`

const categoriesBody = `{"data":{"category_groups":[
  {"id":"g-1","name":"Immediate Obligations","deleted":false,"categories":[
    {"id":"c-1","category_group_id":"g-1","name":"Rent/Mortgage","deleted":false},
    {"id":"c-2","category_group_id":"g-1","name":"Dropped","deleted":true}
  ]},
  {"id":"g-2","name":"Internal Master Category","deleted":false,"categories":[
    {"id":"c-3","category_group_id":"g-2","name":"Inflows","deleted":false}
  ]}
]}}`

const transactionsBody = `{"data":{"transactions":[
  {"id":"t-1","date":"2026-03-14","amount":-100000,"cleared":"reconciled","payee_name":"Grab",
   "account_id":"a-1","category_id":"c-1","deleted":false,
   "subtransactions":[{"id":"s-1","amount":-25000,"category_id":"c-1","memo":"leg"}]},
  {"id":"t-2","date":"2026-03-15","amount":-5000,"cleared":"cleared","payee_name":"Coffee",
   "account_id":"a-1","category_id":"c-1","deleted":false,"subtransactions":[]},
  {"id":"t-3","date":"2026-03-16","amount":-5000,"cleared":"uncleared","payee_name":"Pending",
   "account_id":"a-1","category_id":"c-1","deleted":false,"subtransactions":[]},
  {"id":"t-4","date":"2026-03-17","amount":-5000,"cleared":"reconciled","payee_name":"Deleted",
   "account_id":"a-1","category_id":"c-1","deleted":true,"subtransactions":[]}
]}}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/budgets", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, budgetsBody)
	})
	mux.HandleFunc("/budgets/b-1/accounts", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, accountsBody)
	})
	mux.HandleFunc("/budgets/b-1/categories", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, categoriesBody)
	})
	mux.HandleFunc("/budgets/b-1/transactions", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, transactionsBody)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	return NewClient(baseURL, "test-token", log.New(io.Discard))
}

func TestSelectBudget(t *testing.T) {
	budgets := []Budget{{Name: "Personal"}, {Name: "Business"}}

	got, err := SelectBudget(budgets, "Business")
	require.NoError(t, err)
	assert.Equal(t, "Business", got.Name)

	_, err = SelectBudget(budgets, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Personal, Business")

	_, err = SelectBudget(budgets, "Household")
	require.Error(t, err)

	got, err = SelectBudget(budgets[:1], "")
	require.NoError(t, err)
	assert.Equal(t, "Personal", got.Name)
}

func TestAccounts_DropsDeletedKeepsClosed(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv.URL)

	accounts, err := c.Accounts(context.Background(), "b-1")
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "Checking", accounts[0].Name)
	assert.True(t, accounts[1].Closed)
}

func TestCategories_FlattenedWithGroupName(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv.URL)

	categories, err := c.Categories(context.Background(), "b-1")
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, "Immediate Obligations", categories[0].GroupName)
	assert.Equal(t, "Inflows", categories[1].Name)
}

func TestTransactions_FiltersStateAndDeleted(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv.URL)

	reconciled, err := c.Transactions(context.Background(), "b-1", "USD", time.Time{}, model.StateReconciled)
	require.NoError(t, err)
	require.Len(t, reconciled, 1)
	assert.Equal(t, "t-1", reconciled[0].ID)
	assert.Equal(t, "USD", reconciled[0].Currency)
	assert.Equal(t, model.Milliunits(-100000), reconciled[0].Amount)
	require.Len(t, reconciled[0].Legs, 1)
	assert.Equal(t, "leg", reconciled[0].Legs[0].Memo)

	cleared, err := c.Transactions(context.Background(), "b-1", "USD", time.Time{}, model.StateCleared)
	require.NoError(t, err)
	assert.Len(t, cleared, 2)
}

func TestTransactions_SinceDateQuery(t *testing.T) {
	var gotSince atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSince.Store(r.URL.Query().Get("since_date"))
		io.WriteString(w, `{"data":{"transactions":[]}}`)
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL)
	since := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	_, err := c.Transactions(context.Background(), "b-1", "USD", since, model.StateReconciled)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-15", gotSince.Load())
}

func TestGet_RetriesRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			io.WriteString(w, `{"error":{"id":"429","name":"too_many_requests","detail":"slow down"}}`)
			return
		}
		io.WriteString(w, budgetsBody)
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL)
	budgets, err := c.Budgets(context.Background())
	require.NoError(t, err)
	assert.Len(t, budgets, 2)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGet_UnauthorizedIsPermanent(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"id":"401","name":"unauthorized","detail":"invalid token"}}`)
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL)
	_, err := c.Budgets(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
	assert.Equal(t, int32(1), calls.Load())
}

func TestGet_SendsBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		io.WriteString(w, `{"data":{"budgets":[]}}`)
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv.URL)
	budgets, err := c.Budgets(context.Background())
	require.NoError(t, err)
	assert.Empty(t, budgets)
}

func TestFetch_ConcurrentSnapshot(t *testing.T) {
	srv := newTestServer(t)
	c := newTestClient(t, srv.URL)

	snap, err := c.Fetch(context.Background(), "Personal", time.Time{}, model.StateReconciled)
	require.NoError(t, err)
	assert.Equal(t, "b-1", snap.Budget.ID)
	assert.Len(t, snap.Accounts, 2)
	assert.Len(t, snap.Categories, 2)
	require.Len(t, snap.Transactions, 1)
	assert.Equal(t, "USD", snap.Transactions[0].Currency)
}
