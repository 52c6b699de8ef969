package domain

import "time"

// ReferralStatus is the referral lifecycle state. Transitions are one-way:
// PENDING -> COMPLETED or PENDING -> EXPIRED, each at most once.
type ReferralStatus string

const (
	ReferralPending   ReferralStatus = "PENDING"
	ReferralCompleted ReferralStatus = "COMPLETED"
	ReferralExpired   ReferralStatus = "EXPIRED"
)

// ReferralTTL is how long a referral stays claimable after creation.
// Nothing transitions referrals to EXPIRED yet; the timestamp is stored for a
// future sweep job.
const ReferralTTL = 30 * 24 * time.Hour

// Referral links a referrer to a referred user. A user can be the referee of
// at most one referral (unique index on referee_id).
type Referral struct {
	ID           int64          `db:"id" json:"id"`
	ReferrerID   int64          `db:"referrer_id" json:"referrer_id"`
	RefereeID    int64          `db:"referee_id" json:"referee_id"`
	ReferralCode string         `db:"referral_code" json:"referral_code"`
	Status       ReferralStatus `db:"status" json:"status"`
	RewardAmount int64          `db:"reward_amount" json:"reward_amount"`
	IsRewarded   bool           `db:"is_rewarded" json:"is_rewarded"`
	CompletedAt  *time.Time     `db:"completed_at" json:"completed_at,omitempty"`
	ExpiresAt    time.Time      `db:"expires_at" json:"expires_at"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
}

// ReferralStats aggregates a referrer's results
type ReferralStats struct {
	Total         int   `json:"total"`
	Completed     int   `json:"completed"`
	TotalEarnings int64 `json:"total_earnings"`
}
