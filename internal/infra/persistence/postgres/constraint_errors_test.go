package postgres

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintViolationChecks(t *testing.T) {
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueConstraintViolation(errors.Wrap(gorm.ErrDuplicatedKey, "create failed")))
	assert.False(t, isUniqueConstraintViolation(errors.New("connection refused")))

	assert.True(t, isForeignKeyConstraintViolation(gorm.ErrForeignKeyViolated))
	assert.False(t, isForeignKeyConstraintViolation(gorm.ErrDuplicatedKey))

	assert.True(t, isCheckConstraintViolation(gorm.ErrCheckConstraintViolated))
	assert.False(t, isCheckConstraintViolation(gorm.ErrDuplicatedKey))
}

func TestIsNotNullConstraintViolation_MatchesMessageText(t *testing.T) {
	assert.True(t, isNotNullConstraintViolation(errors.New(`null value in column "title" violates not-null constraint`)))
	assert.True(t, isNotNullConstraintViolation(errors.New("ERROR: 23502")))
	assert.False(t, isNotNullConstraintViolation(errors.New("connection refused")))
}
