package domain

// Action is the strategy's state. {ActionBuy, ActionSell} -> ActionWait
// after posting an order; ActionWait -> {ActionBuy, ActionSell} once the
// order fills or its cancel resolves.
type Action string

const (
	ActionBuy  = Action("buy")
	ActionSell = Action("sell")
	ActionWait = Action("wait")
)

func (action Action) GetSide() Side {
	if action == ActionSell {
		return SideSell
	}
	return SideBuy
}
