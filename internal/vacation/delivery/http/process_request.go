package http

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var (
	errMissingBatchID     = errors.New("batch id is required")
	errMissingOperationID = errors.New("operation id is required")
)

// processCreateReq binds and validates the create batch request body.
func (h *handler) processCreateReq(c *gin.Context) (createReq, error) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}

// processUpdateReq binds the update request body plus the batch ID URI param.
func (h *handler) processUpdateReq(c *gin.Context) (updateReq, error) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.BatchID = c.Param("id")
	if req.BatchID == "" {
		return req, errMissingBatchID
	}
	return req, nil
}

// processImportReq binds and validates the import request body.
func (h *handler) processImportReq(c *gin.Context) (importReq, error) {
	var req importReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, nil
}
