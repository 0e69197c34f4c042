/*
Package habitsdk provides the wire types and a Go client for the habits API.

The server and the client share the types in this package, so a request body
or error document only has one definition.

# Client vs Session

A Client covers the public endpoints (register, login and the health probes)
and creates Sessions:

	client := habitsdk.NewClient("http://localhost:5000")
	session, err := client.AuthenticateWithPassword(ctx, "sam@example.com", "hunter22")

A Session sends the bearer token on every call:

	habit, err := session.CreateHabit(ctx, habitsdk.HabitRequest{Name: "Read"})
	_, created, err := session.CheckIn(ctx, habitsdk.CheckInRequest{HabitID: habit.ID})

# Errors

Non-2xx responses come back as *APIError. Compare them with errors.Is:

	if errors.Is(err, habitsdk.ErrNotFound) {
		// absent, or owned by somebody else
	}
*/
package habitsdk
