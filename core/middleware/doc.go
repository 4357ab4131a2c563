// Package middleware groups the Fiber middleware installed by the serve command.
//
// rayid tags every request with an X-Ray-ID that handlers add to their log lines;
// auth checks the X-API-Key header when a key is configured. The ray id is installed
// first so rejected requests are traceable too.
package middleware
