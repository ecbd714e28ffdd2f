// Package security holds the TLS settings of the transport collaborator.
//
//	http:
//	  tls:
//	    ca_file: /etc/restmapper/ca.pem
//	    cert_file: /etc/restmapper/client.pem
//	    key_file: /etc/restmapper/client-key.pem
//	    min_version: "1.3"
package security
