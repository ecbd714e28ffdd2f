// Package testutil provides test components for code built on the REST
// client.
//
// A TestComponent is a component.Component with Reset, Snapshot and Restore
// for test isolation. Backend is one: a scripted REST server that records
// every request it receives.
//
//	func TestSync(t *testing.T) {
//	    backend := testutil.NewBackend("catalog", map[string]testutil.Reply{
//	        "GET /rest/v1/video/1": {Status: 200, Body: `{"id":1}`},
//	    })
//	    testutil.T(t).Setup(backend)
//	    client, _ := rest.New(rest.Config{BaseURL: backend.URL() + "/rest/v1", ...})
//	    ...
//	    last, _ := backend.Last()
//	}
package testutil
