package usecase

import (
	"context"

	"github.com/piresc/secureword/internal/pkg/logger"
	"github.com/piresc/secureword/internal/pkg/models"
)

// mockTransactions is the demo dashboard dataset
var mockTransactions = []models.Transaction{
	{ID: "1", Date: "24 Aug 2023", ReferenceID: "#8343434343424", To: "Bloom Enterprise Sdn Bhd", Type: "DuitNow payment", Amount: "RM 1,200.00"},
	{ID: "2", Date: "14 Jul 2023", ReferenceID: "#8343434343425", To: "Muhammad Andy Axmawi", Type: "DuitNow payment", Amount: "RM 54,810.16"},
	{ID: "3", Date: "12 Jul 2023", ReferenceID: "#8343434343426", To: "Utilities Company Sdn Bhd", Type: "DuitNow payment", Amount: "RM 100.00"},
	{ID: "4", Date: "10 Jul 2023", ReferenceID: "#8343434343427", To: "Tech Solutions Ltd", Type: "DuitNow payment", Amount: "RM 2,500.00"},
	{ID: "5", Date: "08 Jul 2023", ReferenceID: "#8343434343428", To: "Digital Services Co", Type: "DuitNow payment", Amount: "RM 750.00"},
}

// GetTransactionHistory returns the dashboard dataset for an authenticated user
func (uc *AuthUC) GetTransactionHistory(ctx context.Context, username string) (*models.TransactionHistory, error) {
	transactions := make([]models.Transaction, len(mockTransactions))
	copy(transactions, mockTransactions)

	logger.InfoCtx(ctx, "Serving transaction history", logger.String("username", username))

	return &models.TransactionHistory{
		Transactions: transactions,
		Total:        len(transactions),
	}, nil
}
