package services

import (
	"context"

	"github.com/oakpos/cashdesk/internal/dto"
)

// TransferSvcFacade executes money movements between sessions and against
// external parties (bank, expense accounts, other stores).
type TransferSvcFacade interface {
	// Transfer moves cash between two open sessions along the drawer
	// hierarchy, producing linked debit and credit adjustments atomically.
	Transfer(ctx context.Context, req dto.TransferRequest, employeeID string) (*dto.TransferResponse, error)

	// BankDeposit moves cash from the master safe session to a bank.
	BankDeposit(ctx context.Context, req dto.BankMovementRequest, employeeID string) (*dto.AdjustmentResponse, error)

	// BankWithdrawal moves cash from a bank into the master safe session.
	BankWithdrawal(ctx context.Context, req dto.BankMovementRequest, employeeID string) (*dto.AdjustmentResponse, error)

	// PettyCashPayout debits an open session for an expense payout.
	PettyCashPayout(ctx context.Context, req dto.PettyCashRequest, employeeID string) (*dto.AdjustmentResponse, error)

	// Adjust records a manual correction or other signed movement.
	Adjust(ctx context.Context, req dto.ManualAdjustmentRequest, employeeID string) (*dto.AdjustmentResponse, error)

	// InterStoreSend debits the sending session and creates a pending
	// cross-store transfer record.
	InterStoreSend(ctx context.Context, req dto.InterStoreSendRequest, employeeID string) (*dto.InterStoreTransferResponse, error)

	// InterStoreReceive credits a session at the destination store and marks
	// the pending record completed.
	InterStoreReceive(ctx context.Context, transferID string, req dto.InterStoreReceiveRequest, employeeID string) (*dto.InterStoreTransferResponse, error)

	// InterStoreVoid voids a pending transfer and restores the cash to the
	// sending session.
	InterStoreVoid(ctx context.Context, transferID string, employeeID string) (*dto.InterStoreTransferResponse, error)

	// ListPendingInterStore lists transfers awaiting receipt at a store.
	ListPendingInterStore(ctx context.Context, toStoreID string) ([]dto.InterStoreTransferResponse, error)
}
