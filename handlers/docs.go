/*
Package handlers implements the HTTP API.

Endpoints do not require authentication. Pull request submissions are instead
signed by the submitter's wallet.

Failed requests return the JSON: `{"success": false, "error": "<message>"}`.
Successful requests which return data respond with
`{"success": true, "data": <data>}`.
*/
package handlers
