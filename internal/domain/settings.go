package domain

import "time"

// Default settings values, written on first read if the row is absent.
const (
	DefaultMaxSpendPercentage   = 80
	DefaultReferralRewardAmount = 50000   // 500.00 in paise
	DefaultMinWalletBalance     = 0
	DefaultMaxDailySpend        = 1000000 // 10,000.00 in paise
)

// Settings is the single wallet policy record. At most one row exists; it is
// read on every payment/referral operation and written only by the admin
// update endpoint.
type Settings struct {
	MaxSpendPercentage   int       `db:"max_spend_percentage" json:"max_spend_percentage"`
	ReferralRewardAmount int64     `db:"referral_reward_amount" json:"referral_reward_amount"`
	IsWalletEnabled      bool      `db:"is_wallet_enabled" json:"is_wallet_enabled"`
	MinWalletBalance     int64     `db:"min_wallet_balance" json:"min_wallet_balance"`
	MaxDailySpend        int64     `db:"max_daily_spend" json:"max_daily_spend"`
	UpdatedAt            time.Time `db:"updated_at" json:"updated_at"`
}

// SettingsUpdate carries a partial admin update; nil fields are left untouched.
type SettingsUpdate struct {
	MaxSpendPercentage   *int   `json:"max_spend_percentage"`
	ReferralRewardAmount *int64 `json:"referral_reward_amount"`
	IsWalletEnabled      *bool  `json:"is_wallet_enabled"`
	MinWalletBalance     *int64 `json:"min_wallet_balance"`
	MaxDailySpend        *int64 `json:"max_daily_spend"`
}
