package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRepositories(t *testing.T) {
	db := &Connection{queryTimeout: time.Second, txTimeout: 2 * time.Second}

	ur := NewUserRepository(db)
	assert.Equal(t, db, ur.db)

	cr := NewCredentialRepository(db)
	assert.Equal(t, db, cr.db)

	rr := NewRoleRepository(db)
	assert.Equal(t, db, rr.db)

	tr := NewRefreshTokenRepository(db)
	assert.Equal(t, db, tr.db)
}
