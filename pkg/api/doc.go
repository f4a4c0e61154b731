// Package api provides the HTTP client used to pull paginated record
// collections from the analytics source API.
//
// The client exposes three operations:
//
//   - Get: a single GET with bounded retry and exponential backoff. When
//     every attempt fails the caller receives an *APIError wrapping
//     ErrRetryExhausted.
//   - Post: a single POST without retry, used by the notification
//     collaborator.
//   - FetchAll: sequential pagination over one resource. Pages are requested
//     with fresh _page/_limit parameters until an empty page, a short page,
//     or the configured page cap. A failed page never propagates: FetchAll
//     degrades to whatever was collected so far.
//
// An optional Redis page cache (pkg/cache) can be attached via Config.Cache;
// cache failures fall back to direct requests.
package api
