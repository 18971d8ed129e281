package models

import (
	"fmt"

	"gorm.io/gorm"
)

// acquireCreditPostingLock serializes credit read-modify-write across instances
// using MySQL advisory locks. The availability check and the used-amount
// increment must be one logical step, so two concurrent bookings cannot both
// pass the check against the same stale balance.
// NOTE: GET_LOCK is connection-scoped, so this must be called on the same
// *gorm.DB that runs the posting transaction.
func acquireCreditPostingLock(tx *gorm.DB) error {
	var ok int
	if err := tx.Raw("SELECT GET_LOCK(?, 30)", creditLockName).Scan(&ok).Error; err != nil {
		return err
	}
	if ok != 1 {
		return fmt.Errorf("could not acquire credit posting lock")
	}
	return nil
}

func releaseCreditPostingLock(tx *gorm.DB) {
	var _ok int
	_ = tx.Raw("SELECT RELEASE_LOCK(?)", creditLockName).Scan(&_ok).Error
}

const creditLockName = "credit:posting"
