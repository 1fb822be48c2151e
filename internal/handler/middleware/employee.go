package middleware

import (
	"net/http"

	"pos-backoffice/internal/handler/httperr"
	"pos-backoffice/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EmployeeIDHeader attributes an operation to the counter employee. It is
// optional: the engine runs fine without attribution, it just skips the
// activity log entry.
const EmployeeIDHeader = "X-Employee-ID"

const employeeIDKey = "employee_id"

// EmployeeContext parses the attribution header once per request. A present
// but malformed header is rejected so a typo never silently drops the audit
// trail.
func EmployeeContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(EmployeeIDHeader)
		if raw == "" {
			c.Next()
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, errs.Wrap(err, "malformed employee id header"), "Invalid X-Employee-ID header", nil)
			return
		}
		c.Set(employeeIDKey, id)
		c.Next()
	}
}

// GetEmployeeID returns the parsed employee id, nil when the request carried
// no attribution header.
func GetEmployeeID(c *gin.Context) *uuid.UUID {
	v, exists := c.Get(employeeIDKey)
	if !exists {
		return nil
	}
	id, ok := v.(uuid.UUID)
	if !ok {
		return nil
	}
	return &id
}
