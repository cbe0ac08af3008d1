/*
Package wizard drives the trip builder steps against a session.

Steps one and two record the destination and interests. Step three is the place
selection step, a small state machine:

	Loading --Enter--> Ready --Advance--> Advancing
	                   ^   |
	                   +---+ Toggle / ToggleAll

Enter checks authentication and the earlier step records, partitions the
destination's places by interest and seeds the selection with every place of the
city. Advance hands the selection off as the step3Data record.

The Wizard mutates the session it is given and never persists it; callers run it
under the session lock (see the session package) and save the result.
*/
package wizard
