package topology_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/linkdown/pkg/topology"
)

func ExampleEdge_Equal() {
	a := topology.NewEdge("pe01", "ge-0/0/0", "ce01", "Ethernet1")
	b := topology.NewEdge("ce01", "Ethernet1", "pe01", "ge-0/0/0")

	fmt.Println(a.Equal(b))
	fmt.Println(a.Key() == b.Key())
	// Output:
	// true
	// true
}

func ExampleRead() {
	doc := `{"edges": [
	  {"node1": {"hostname": "pe01", "interfaceName": "ge-0/0/0"},
	   "node2": {"hostname": "ce01", "interfaceName": "Ethernet1"}}
	]}`

	topo, err := topology.Read(strings.NewReader(doc))
	if err != nil {
		panic(err)
	}
	for _, e := range topo.Edges {
		fmt.Println(e)
	}
	// Output:
	// pe01[ge-0/0/0] <=> ce01[Ethernet1]
}

func ExampleWrite() {
	edges := []topology.Edge{topology.NewEdge("A", "eth1", "B", "eth1")}
	if err := topology.Write(os.Stdout, edges); err != nil {
		panic(err)
	}
	// Output:
	// {
	//   "edges": [
	//     {
	//       "node1": {
	//         "hostname": "A",
	//         "interfaceName": "eth1"
	//       },
	//       "node2": {
	//         "hostname": "B",
	//         "interfaceName": "eth1"
	//       }
	//     }
	//   ]
	// }
}
