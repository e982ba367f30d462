package ledger

// Wire format of the ledger's /api/v1/transactions endpoint. Each data
// element is a transaction group whose attributes carry zero or more split
// transactions.
type (
	transactionsResponse struct {
		Data []transactionGroup `json:"data"`
		Meta responseMeta       `json:"meta"`
	}

	transactionGroup struct {
		Attributes groupAttributes `json:"attributes"`
	}

	groupAttributes struct {
		Description  string             `json:"description"`
		Transactions []splitTransaction `json:"transactions"`
	}

	splitTransaction struct {
		TransactionJournalID string `json:"transaction_journal_id"`
		Amount               string `json:"amount"`
		Date                 string `json:"date"`
		CategoryName         string `json:"category_name"`
		SourceName           string `json:"source_name"`
		DestinationName      string `json:"destination_name"`
		CurrencyCode         string `json:"currency_code"`
		ForeignCurrencyCode  string `json:"foreign_currency_code"`
	}

	responseMeta struct {
		Pagination paginationMeta `json:"pagination"`
	}

	paginationMeta struct {
		TotalPages int `json:"total_pages"`
	}
)
