package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/catalystlabs/meioactor/internal/actor"
)

var heartbeatInterval time.Duration

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Spawn the demo supervision tree and run until interrupted",
	Long: `run spawns a root actor with a HeartBeat lite task bound beneath
it. The root actor counts ticks and prints each one. Ctrl-C once to request a
graceful stop; Ctrl-C again to exit immediately without waiting.`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().DurationVar(
		&heartbeatInterval, "interval", time.Second,
		"Heartbeat tick interval",
	)
}

// root is the demo root actor: on Awake it binds a HeartBeat lite task to
// itself, then counts the Tick actions the heartbeat delivers.
type root struct {
	ticks int
}

func rootBehaviors() *actor.Behaviors[*root] {
	b := actor.NewBehaviors[*root]()

	actor.HandleAction(b, func(_ context.Context, r *root, actCtx *actor.Context[*root], _ actor.Awake) error {
		recipient := actor.AsActionRecipient[*root, actor.Tick](actCtx.Self())
		hb := actor.NewHeartBeat(heartbeatInterval, recipient)
		actor.BindTask(actCtx, hb)
		return nil
	})

	actor.HandleAction(b, func(_ context.Context, r *root, _ *actor.Context[*root], _ actor.Tick) error {
		r.ticks++
		fmt.Printf("tick %d\n", r.ticks)
		return nil
	})

	return b
}

func runRun(cmd *cobra.Command, args []string) error {
	sys := actor.NewSystem()

	addr := actor.Standalone(rootBehaviors(), &root{})
	actor.TrackActor(sys, addr)

	actor.WaitOrInterrupt(sys.Context(), addr.Interrupt, addr.Join)

	return sys.Shutdown()
}
