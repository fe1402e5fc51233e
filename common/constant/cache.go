package constant

import "time"

const (
	CustomerBalanceKey = "customer:%s:balance"
	FollowUpStatusKey  = "schedule:%s:followup"
	DepositLockKey     = "deposit:lock:%s"
	DistrictListKey    = "address:districts:%s"
	WardListKey        = "address:wards:%s"
)

const (
	DepositLockDefaultTTL = 1 * time.Minute
)
