package sqlstore

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"nettileffa/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrUnavailable = errs.Errorf(errs.EUNAVAILABLE, "catalog database is unavailable")
	ErrInternal    = errs.Errorf(errs.EINTERNAL, "catalog database error")
)

// translate maps driver and gorm errors onto application errors. Raw
// driver messages never leave this package.
func translate(err error, notFound error) error {
	if err == nil {
		return nil
	}

	var appErr *errs.Error
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil {
		return notFound
	}

	if unavailable(err) {
		return ErrUnavailable
	}

	return ErrInternal
}

func unavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	// database/sql does not export its closed-pool error.
	if strings.Contains(err.Error(), "sql: database is closed") {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		// 08: connection exception, 57P0x: server shutting down or
		// refusing connections.
		return strings.HasPrefix(code, "08") || strings.HasPrefix(code, "57P0")
	}

	return false
}
