package entity

// WalletBalance is the read model behind the balance endpoint
type WalletBalance struct {
	CreditBalance string `json:"credit_balance"`
	RemainingTime uint   `json:"remaining_time"`
}

// UserToWalletBalance converts a User entity to its wallet read model.
// This is a separate function rather than a method on User to keep domain models clean
func UserToWalletBalance(user *User) WalletBalance {
	return WalletBalance{
		CreditBalance: user.FormattedBalance(),
		RemainingTime: user.RemainingTime,
	}
}
