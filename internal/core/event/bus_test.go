package event

import "testing"

func TestEventsAreDeliveredNextTick(t *testing.T) {
	b := NewBus()
	var got []PlayerLoggedIn
	Subscribe(b, func(ev PlayerLoggedIn) { got = append(got, ev) })

	Emit(b, PlayerLoggedIn{EntityID: 7, AccountName: "alice"})
	b.DispatchAll()
	if len(got) != 0 {
		t.Fatalf("event delivered before swap: %+v", got)
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 || got[0].AccountName != "alice" {
		t.Fatalf("got %+v", got)
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 {
		t.Fatalf("event delivered twice: %+v", got)
	}
}

func TestSubscribersOnlySeeTheirType(t *testing.T) {
	b := NewBus()
	logins, drops := 0, 0
	Subscribe(b, func(PlayerLoggedIn) { logins++ })
	Subscribe(b, func(PlayerDisconnected) { drops++ })

	Emit(b, PlayerDisconnected{EntityID: 1, SessionID: 9})
	Emit(b, PlayerDisconnected{EntityID: 2, SessionID: 10})
	b.SwapBuffers()
	b.DispatchAll()

	if logins != 0 || drops != 2 {
		t.Fatalf("logins=%d drops=%d", logins, drops)
	}
}
