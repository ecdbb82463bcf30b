package service

import (
	"net/http"

	"github.com/noah-isme/course-portal-api/internal/repository"
	"github.com/noah-isme/course-portal-api/pkg/storeclient"
)

func notFound(err error) bool {
	se, ok := storeclient.AsStatusError(err)
	return ok && se.StatusCode == http.StatusNotFound
}

// storeMessage returns the message the store attached to a failure, if any.
func storeMessage(err error) string {
	if re, ok := repository.AsRejected(err); ok {
		return re.Message
	}
	if se, ok := storeclient.AsStatusError(err); ok {
		return se.Message
	}
	return ""
}
