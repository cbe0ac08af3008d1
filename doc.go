/*
Package wayfarer is a trip builder: sign up, pick a destination, pick interests,
then curate the places to visit.

The heart of the module is the place selection step. Given a destination and a
set of interest categories it partitions the destination's places into those
matching an interest and the rest, seeds a selection with every place of the
city, lets the user toggle places in and out, and hands the final selection off
as the step3Data session record.

# Architecture

The Planner is the entry point. It composes:

  - a catalog of places (built-in, a YAML/JSON file or a Loam directory),
  - a session store (memory, file or redis) behind optional encryption and PII middlewares,
  - a session manager serializing access per session,
  - the wizard, which applies step operations to sessions.

The HTTP API, the MCP server and the terminal CLI are thin adapters over it.

# Usage

	planner, err := wayfarer.New()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	s, _ := planner.StartSession(ctx)
	_, _ = planner.Login(ctx, s.ID, auth.LoginForm{Email: "asha@example.com", Password: "secret"})
	_, _ = planner.SubmitDestination(ctx, s.ID, "Andaman")
	_, _ = planner.SubmitInterests(ctx, s.ID, []string{"Beaches 🏖️"})

	view, _ := planner.EnterPlaces(ctx, s.ID)
	for _, group := range view.Groups {
		fmt.Println(group.Interest, domain.Names(group.Places))
	}

	view, _ = planner.TogglePlace(ctx, s.ID, "Cellular Jail")
	data, err := planner.Advance(ctx, s.ID)
*/
package wayfarer
