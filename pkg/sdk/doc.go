// Package sdk embeds a multiprof attach endpoint in an application.
//
// The endpoint exposes the standard net/http/pprof handlers on a loopback
// address so the process can be profiled with 'multiprof run <addr>'
// without wiring pprof into the application's own HTTP surface:
//
//	mp, err := sdk.New(sdk.Config{ServiceName: "payments"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer mp.Close()
//	// mp.Addr() is the target to profile
package sdk
