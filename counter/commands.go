package counter

type Increment struct{}

type Decrement struct{}

type GetValue struct{}

type Reset struct{}

type Echo struct{}
