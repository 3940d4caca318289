// Package discovery locates Meetwire backends on the local network.
//
// On-prem deployments advertise the signaling endpoint over mDNS as
// a _meetwire._tcp service. TXT records carry endpoint details:
//
//	secure=1    serve over wss:// instead of ws://
//	path=/ws    WebSocket path on the host
//
// The driver uses discovery only when no server URL is configured.
package discovery
