// Package directory is the HTTP client for the Directory Service, the remote
// owner of contacts, categories and category membership.
//
// Client implements messaging.Directory on top of pkg/restclient:
//
//	GET    /contacts
//	GET    /categories
//	GET    /contacts/category/{categoryId}
//	POST   /categories                                  {name, description, parentId}
//	POST   /contacts/{contactId}/categories/{categoryId}
//	DELETE /contacts/{contactId}/categories/{categoryId}
//
// Writes answer with {success, message}; success=false is returned as
// ErrRejected. Every error also matches messaging.ErrTransportFailure.
package directory
