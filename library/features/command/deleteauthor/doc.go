// Package deleteauthor implements the Delete Author use case.
//
// An author can only be deleted once no book references it anymore, otherwise the request fails with
// core.ErrAuthorHasBooks. The store's restricting foreign key backs this check up.
package deleteauthor
