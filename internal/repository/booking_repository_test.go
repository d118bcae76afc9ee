package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateSeat(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1-2-3' for key 'uq_showtime_seat'"}

	assert.True(t, isDuplicateSeat(dup))
	assert.True(t, isDuplicateSeat(fmt.Errorf("insert seats: %w", dup)))

	assert.False(t, isDuplicateSeat(nil))
	assert.False(t, isDuplicateSeat(errors.New("connection reset")))
	// Any other MySQL error number is not a seat conflict.
	assert.False(t, isDuplicateSeat(&mysql.MySQLError{Number: 1213, Message: "Deadlock found"}))
}
