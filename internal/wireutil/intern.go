package wireutil

// String interning for common HTTP tokens, adapted from the teacher's
// internal/fastparser/intern.go. The Go compiler optimizes map lookups
// keyed by string(someBytes) to skip the temporary allocation, so
// InternHeaderName(knownBytes) is effectively zero-alloc for the common
// case; unknown names still allocate exactly once, same as before.

var methods = map[string]string{
	"GET": "GET", "HEAD": "HEAD", "POST": "POST",
	"PUT": "PUT", "DELETE": "DELETE", "CONNECT": "CONNECT",
	"OPTIONS": "OPTIONS", "TRACE": "TRACE", "PATCH": "PATCH",
}

var versions = map[string]string{
	"HTTP/1.0": "HTTP/1.0", "HTTP/1.1": "HTTP/1.1",
}

var headerNames = map[string]string{
	"Accept": "Accept", "Accept-Charset": "Accept-Charset",
	"Accept-Encoding": "Accept-Encoding", "Accept-Language": "Accept-Language",
	"Accept-Ranges": "Accept-Ranges", "Age": "Age", "Allow": "Allow",
	"Authorization": "Authorization", "Cache-Control": "Cache-Control",
	"Connection": "Connection", "Content-Disposition": "Content-Disposition",
	"Content-Encoding": "Content-Encoding", "Content-Language": "Content-Language",
	"Content-Length": "Content-Length", "Content-Location": "Content-Location",
	"Content-Range": "Content-Range", "Content-Type": "Content-Type",
	"Cookie": "Cookie", "Date": "Date", "ETag": "ETag", "Expect": "Expect",
	"Expires": "Expires", "Host": "Host", "If-Match": "If-Match",
	"If-Modified-Since": "If-Modified-Since", "If-None-Match": "If-None-Match",
	"If-Range": "If-Range", "If-Unmodified-Since": "If-Unmodified-Since",
	"Last-Modified": "Last-Modified", "Location": "Location",
	"Max-Forwards": "Max-Forwards", "Set-Cookie": "Set-Cookie",
	"Trailer": "Trailer", "Transfer-Encoding": "Transfer-Encoding",
	"Upgrade": "Upgrade", "User-Agent": "User-Agent", "Vary": "Vary",
	"WWW-Authenticate": "WWW-Authenticate", "Proxy-Authenticate": "Proxy-Authenticate",
	"Proxy-Authorization": "Proxy-Authorization", "Range": "Range",
	"Retry-After": "Retry-After", "Server": "Server", "Via": "Via", "Warning": "Warning",
}

// InternMethod returns an interned string for known HTTP methods.
func InternMethod(b []byte) string {
	if s, ok := methods[string(b)]; ok {
		return s
	}
	return string(b)
}

// InternVersion returns an interned string for known HTTP versions.
func InternVersion(b []byte) string {
	if s, ok := versions[string(b)]; ok {
		return s
	}
	return string(b)
}

// InternHeaderName returns an interned string for known header names.
func InternHeaderName(b []byte) string {
	if s, ok := headerNames[string(b)]; ok {
		return s
	}
	return string(b)
}
