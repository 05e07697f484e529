package fetcher

import (
	"context"
	"net/http"

	"github.com/kaelwright/readable/pkg/failure"
	"github.com/kaelwright/readable/pkg/retry"
)

type Fetcher interface {
	Init(httpClient *http.Client)
	Fetch(
		ctx context.Context,
		fetchParam FetchParam,
		retryParam retry.RetryParam,
	) (FetchResult, failure.ClassifiedError)
}
