package testscommon

// SourceFetcherStub -
type SourceFetcherStub struct {
	FetchContractCodeCalled func(name string, url string) ([]byte, error)
}

// FetchContractCode -
func (stub *SourceFetcherStub) FetchContractCode(name string, url string) ([]byte, error) {
	if stub.FetchContractCodeCalled != nil {
		return stub.FetchContractCodeCalled(name, url)
	}
	return []byte{0x00}, nil
}

// IsInterfaceNil -
func (stub *SourceFetcherStub) IsInterfaceNil() bool {
	return stub == nil
}
