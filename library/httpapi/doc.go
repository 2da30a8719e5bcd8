// Package httpapi exposes the library records service over HTTP using gin.
//
// Every route builds a command or query from the request, hands it to the matching handler
// and maps the outcome to a status code and a JSON body. Errors are returned as {"detail": "..."}.
//
// Routes:
//   - GET    /books
//   - POST   /books
//   - GET    /books/:serial
//   - PATCH  /books/:serial
//   - DELETE /books/:serial
//   - GET    /users
//   - POST   /users
//   - GET    /users/:card (with_books=false returns the user only)
//   - DELETE /users/:card
//   - GET    /health
package httpapi
