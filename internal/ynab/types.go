package ynab

// Wire types for the YNAB v1 API. Fields follow
// https://api.ynab.com/v1; amounts are milliunits.

// Budget identifies one budget and its currency.
type Budget struct {
	ID       string         `json:"id"`
	Name     string         `json:"name"`
	Currency currencyFormat `json:"currency_format"`
}

type currencyFormat struct {
	ISOCode string `json:"iso_code"`
}

type budgetsResponse struct {
	Data struct {
		Budgets []Budget `json:"budgets"`
	} `json:"data"`
}

type accountJSON struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	OnBudget bool   `json:"on_budget"`
	Closed   bool   `json:"closed"`
	Deleted  bool   `json:"deleted"`
}

type accountsResponse struct {
	Data struct {
		Accounts []accountJSON `json:"accounts"`
	} `json:"data"`
}

type categoryJSON struct {
	ID      string `json:"id"`
	GroupID string `json:"category_group_id"`
	Name    string `json:"name"`
	Hidden  bool   `json:"hidden"`
	Deleted bool   `json:"deleted"`
}

type categoryGroupJSON struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Hidden     bool           `json:"hidden"`
	Deleted    bool           `json:"deleted"`
	Categories []categoryJSON `json:"categories"`
}

type categoriesResponse struct {
	Data struct {
		CategoryGroups []categoryGroupJSON `json:"category_groups"`
	} `json:"data"`
}

type subTransactionJSON struct {
	ID                string `json:"id"`
	Amount            int64  `json:"amount"`
	Memo              string `json:"memo"`
	PayeeName         string `json:"payee_name"`
	CategoryID        string `json:"category_id"`
	TransferAccountID string `json:"transfer_account_id"`
	Deleted           bool   `json:"deleted"`
}

type transactionJSON struct {
	ID                string               `json:"id"`
	Date              string               `json:"date"`
	Amount            int64                `json:"amount"`
	Memo              string               `json:"memo"`
	Cleared           string               `json:"cleared"`
	PayeeName         string               `json:"payee_name"`
	AccountID         string               `json:"account_id"`
	CategoryID        string               `json:"category_id"`
	TransferAccountID string               `json:"transfer_account_id"`
	Deleted           bool                 `json:"deleted"`
	SubTransactions   []subTransactionJSON `json:"subtransactions"`
}

type transactionsResponse struct {
	Data struct {
		Transactions []transactionJSON `json:"transactions"`
	} `json:"data"`
}

type errorResponse struct {
	Error struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Detail string `json:"detail"`
	} `json:"error"`
}
