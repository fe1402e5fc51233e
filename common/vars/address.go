package vars

import (
	"clinic-booking/model"
	"sync/atomic"
	"unsafe"
)

// provinceDataPtr holds a pointer to the current province snapshot.
// Lock-free reads with atomic replacement on refresh.
var provinceDataPtr unsafe.Pointer

// GetProvinces returns the current province snapshot. Safe for concurrent
// access.
func GetProvinces() []model.AddressUnit {
	ptr := atomic.LoadPointer(&provinceDataPtr)
	if ptr == nil {
		return nil
	}
	return *(*[]model.AddressUnit)(ptr)
}

// SetProvinces atomically replaces the province snapshot. It copies the
// input so later mutation by the caller cannot tear a published slice.
// Pass nil or an empty slice to clear.
func SetProvinces(provinces []model.AddressUnit) {
	var ptr unsafe.Pointer

	if len(provinces) > 0 {
		provincesCopy := make([]model.AddressUnit, len(provinces))
		copy(provincesCopy, provinces)
		ptr = unsafe.Pointer(&provincesCopy)
	}

	atomic.StorePointer(&provinceDataPtr, ptr)
}

func init() {
	atomic.StorePointer(&provinceDataPtr, nil)
}
