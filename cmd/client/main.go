package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Vandammecasper/voting-app/internal/poll"
	"github.com/Vandammecasper/voting-app/internal/screens"
	"github.com/Vandammecasper/voting-app/internal/session"
	"github.com/Vandammecasper/voting-app/internal/store"
)

func main() {
	server := flag.String("server", "http://localhost:8080", "sync store base URL")
	name := flag.String("name", "", "display name")
	create := flag.Bool("create", false, "create a new session")
	join := flag.String("join", "", "join code of an existing session")
	flag.Parse()

	if *name == "" {
		log.Fatal("a -name is required")
	}
	if *create == (*join != "") {
		log.Fatal("pass exactly one of -create or -join")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := store.SignInAnonymously(ctx, *server)
	if err != nil {
		log.Fatalf("sign-in: %v", err)
	}
	coord := session.NewCoordinator(client)

	var lobbyID string
	if *create {
		lobbyID, err = coord.CreateSession(ctx, *name)
	} else {
		lobbyID, err = coord.JoinSession(ctx, strings.TrimSpace(*join), *name)
	}
	if err != nil {
		log.Fatalf("enter session: %v", err)
	}

	room := screens.NewWaitingRoom(client, lobbyID, poll.DefaultInterval)
	room.Start(ctx)
	defer room.Close()

	if *create {
		lobby, err := coord.Lobby(ctx, lobbyID)
		if err != nil {
			log.Fatalf("read lobby: %v", err)
		}
		fmt.Printf("session created, join code: %s\n", lobby.Code)
		fmt.Println("press enter to start voting")
		go func() {
			bufio.NewReader(os.Stdin).ReadString('\n')
			if err := coord.AdvancePhase(ctx, lobbyID, session.PhaseVoting); err != nil {
				log.Printf("advance phase: %v", err)
			}
		}()
	} else {
		fmt.Println("joined, waiting for the host to start")
	}

	for ev := range room.Events() {
		switch ev := ev.(type) {
		case screens.MembersUpdated:
			names := make([]string, 0, len(ev.Members))
			for _, m := range ev.Members {
				label := m.Name
				if m.IsCreator {
					label += " (host)"
				}
				if m.Offline {
					label += " (offline)"
				}
				names = append(names, label)
			}
			fmt.Printf("in the room: %s\n", strings.Join(names, ", "))
		case screens.NameChangeRequested:
			fmt.Println("the host asked you to pick a different name")
		case screens.RemovedByHost:
			fmt.Println("you were removed from the session")
			return
		case screens.PhaseChanged:
			fmt.Printf("session moved to the %s phase\n", ev.Phase)
			if ev.Phase != session.PhaseWaiting {
				return
			}
		}
	}
}
