// Package rest is the mapped REST client. It turns entity operations into
// request descriptors with urlbuilder, executes them through a Transport
// (an httpclient.Adapter by default) and classifies every response with
// classifier.
//
//	client, err := rest.New(rest.Config{
//	    BaseURL:     "http://catalog/rest/v1",
//	    MappingFile: "mapping.yaml",
//	})
//	video, err := client.Get(ctx, "video", mapping.Entity{"id": 3})
//
// Every call makes at most one transport call and yields one outcome.
// Unmapped type names fail with UNMAPPED_OPERATION before any network
// exchange. Transport failures are TRANSPORT_FAILED or TIMEOUT and keep
// their cause. Calls are logged, traced and counted.
package rest
