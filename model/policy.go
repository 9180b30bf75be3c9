package model

// Access policy. Every role/ownership decision in the API goes through the
// methods below instead of comparing types at the call site.

func (u *User) IsAdmin() bool {
	return u.Type == UserTypeAdmin
}

// CanSeeHiddenOf reports whether u may see hidden posts owned by authorId.
func (u *User) CanSeeHiddenOf(authorId int64) bool {
	return u.IsAdmin() || u.Id == authorId
}

// CanViewPost reports whether the post is visible to u at all. A hidden post
// is visible only to its author and admins.
func (u *User) CanViewPost(p *Post) bool {
	return !p.IsHidden || u.CanSeeHiddenOf(p.AuthorId)
}

// CanModifyPost reports whether u may update or delete the post.
func (u *User) CanModifyPost(p *Post) bool {
	return u.IsAdmin() || u.Id == p.AuthorId
}
