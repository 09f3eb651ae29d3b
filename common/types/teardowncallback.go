package types

type TearDownCallback func() error
