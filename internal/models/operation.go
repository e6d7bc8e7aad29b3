package models

import "fmt"

// Operation is one of the Daraja APIs proxied by the gateway. Its string value is
// the route suffix and the api name written to the audit log.
type Operation string

const (
	OperationSTKPush           Operation = "stk-push"
	OperationB2C               Operation = "b2c"
	OperationB2B               Operation = "b2b"
	OperationTransactionStatus Operation = "transaction-status"
	OperationAccountBalance    Operation = "account-balance"
	OperationReversal          Operation = "reversal"
	OperationQRCode            Operation = "qr"
	OperationRatiba            Operation = "ratiba"
	OperationPullTransactions  Operation = "pull-transactions"
)

// Operations lists every proxied operation in route order.
var Operations = []Operation{
	OperationSTKPush,
	OperationB2C,
	OperationB2B,
	OperationTransactionStatus,
	OperationAccountBalance,
	OperationReversal,
	OperationQRCode,
	OperationRatiba,
	OperationPullTransactions,
}

// EndpointKey is the configuration key holding the operation's Daraja endpoint path.
func (op Operation) EndpointKey() string {
	switch op {
	case OperationSTKPush:
		return "stk_push"
	case OperationB2C:
		return "b2c"
	case OperationB2B:
		return "b2b"
	case OperationTransactionStatus:
		return "transaction_status"
	case OperationAccountBalance:
		return "account_balance"
	case OperationReversal:
		return "reversal"
	case OperationQRCode:
		return "qr_code"
	case OperationRatiba:
		return "ratiba"
	case OperationPullTransactions:
		return "pull_transactions"
	default:
		return ""
	}
}

func (op Operation) IsValid() bool {
	return op.EndpointKey() != ""
}

func ParseOperation(s string) (Operation, error) {
	op := Operation(s)
	if !op.IsValid() {
		return "", fmt.Errorf("unknown operation %q", s)
	}
	return op, nil
}
