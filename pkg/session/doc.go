// Package session holds the per-client identity context for the café
// dashboard.
//
// A session moves through an explicit lifecycle:
//
//	Begin      -> loading          (profile fetch pending, everything denied)
//	Resolve    -> active           (identity loaded and approved)
//	           -> pending_approval (profile exists, awaiting admin approval)
//	           -> unauthenticated  (profile missing or fetch failed)
//	SignOut    -> session deleted  (synchronous teardown)
//
// Capability reporting fails closed: Session.Allowed returns the zero
// capability set unless the session is active, so a loading, pending or
// torn-down session can never expose stale permissions.
//
// Sign-out during an in-flight profile fetch is handled with an epoch
// counter: Resolve re-reads the session after the fetch settles and drops
// the result if the session is gone or its epoch moved, so a stale profile
// is never applied to a cleared context.
//
// Persistence is pluggable through Store (in-memory and Redis
// implementations provided); HTTP integration uses a cookie Transport and
// a chi-compatible middleware.
package session
